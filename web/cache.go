package web

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/cnf/structhash"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/npillmayer/arbor/inspect"
	"github.com/npillmayer/arbor/syntax"
	"github.com/npillmayer/arbor/syntax/astjson"
)

// parsed is what a parse request produces. Cached values are shared between
// requests and must be treated as read-only by handlers.
type parsed struct {
	AST       astjson.Node
	Structure *inspect.Structure
}

// parseCache memoizes parse results, keyed by a digest of the source text.
type parseCache struct {
	lru *lru.Cache[string, *parsed]
}

func newParseCache(size int) (*parseCache, error) {
	if size <= 0 {
		size = Default().CacheSize
	}
	c, err := lru.New[string, *parsed](size)
	if err != nil {
		return nil, err
	}
	return &parseCache{lru: c}, nil
}

// cacheKey is hashed with structhash; versioning the struct invalidates
// old digests when the payload shape changes.
type cacheKey struct {
	Code string `version:"1"`
}

func (pc *parseCache) key(code string) string {
	return fmt.Sprintf("%x", structhash.Md5(cacheKey{Code: code}, 1))
}

// parse returns the encoded tree and structure view for code, from cache
// if it has been seen before.
func (pc *parseCache) parse(code string) (*parsed, error) {
	k := pc.key(code)
	if v, ok := pc.lru.Get(k); ok {
		tracer().Debugf("parse cache hit for %s", k)
		return v, nil
	}
	t, err := syntax.ParseSnippet([]byte(code))
	if err != nil {
		return nil, err
	}
	enc, err := astjson.EncodeTree(t)
	if err != nil {
		return nil, err
	}
	v := &parsed{AST: enc, Structure: inspect.Extract(t)}
	pc.lru.Add(k, v)
	return v, nil
}
