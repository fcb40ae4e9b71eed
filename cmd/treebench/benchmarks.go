package main

import (
	"math/rand"
	"time"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/mikenye/ordtrees/avltree"
	"github.com/mikenye/ordtrees/splaytree"
	"github.com/mikenye/ordtrees/treap"
)

const (
	startSize = 10_000
	endSize   = 1_000_000 // exclusive
	step      = 10_000
	trials    = 1_000
)

func lessInt(a, b int) bool { return a < b }

// intSet is the narrow surface the sweep needs from whichever ordered
// set is under test. Each tree package exposes a richer API than this;
// these adapters exist only to let one sweep loop drive all four.
type intSet interface {
	Insert(key int)
	Find(key int) bool
	Erase(key int)
	Size() int
}

type avlAdapter struct{ t *avltree.Tree[int] }

func (a avlAdapter) Insert(key int) { a.t.Insert(key) }
func (a avlAdapter) Find(key int) bool { return a.t.Contains(key) }
func (a avlAdapter) Erase(key int)  { a.t.Erase(key) }
func (a avlAdapter) Size() int      { return a.t.Size() }

type splayAdapter struct{ t *splaytree.Tree[int] }

func (a splayAdapter) Insert(key int)   { a.t.Insert(key) }
func (a splayAdapter) Find(key int) bool { return !a.t.Find(key).Done() }
func (a splayAdapter) Erase(key int)    { a.t.Erase(key) }
func (a splayAdapter) Size() int        { return a.t.Size() }

type treapAdapter struct{ t *treap.Tree[int] }

func (a treapAdapter) Insert(key int)   { a.t.Insert(key) }
func (a treapAdapter) Find(key int) bool { return a.t.Contains(key) }
func (a treapAdapter) Erase(key int)    { a.t.Erase(key) }
func (a treapAdapter) Size() int        { return a.t.Size() }

type rbAdapter struct{ t *redblacktree.Tree }

func (a rbAdapter) Insert(key int) { a.t.Put(key, struct{}{}) }
func (a rbAdapter) Find(key int) bool {
	_, found := a.t.Get(key)
	return found
}
func (a rbAdapter) Erase(key int) { a.t.Remove(key) }
func (a rbAdapter) Size() int     { return a.t.Size() }

func benchmarkAVL() []sizeResult {
	return sweep(func() intSet { return avlAdapter{avltree.New(lessInt)} })
}

func benchmarkSplay() []sizeResult {
	return sweep(func() intSet { return splayAdapter{splaytree.New(lessInt)} })
}

func benchmarkTreap() []sizeResult {
	return sweep(func() intSet { return treapAdapter{treap.NewTimeSeeded(lessInt)} })
}

func benchmarkRB() []sizeResult {
	return sweep(func() intSet { return rbAdapter{redblacktree.NewWithIntComparator()} })
}

// sweep grows the set produced by mk from startSize up to (but not
// including) endSize in step-sized increments. At each size it runs
// trials measured rounds of insert/find/erase on a fresh random key,
// timing each phase separately and averaging.
func sweep(mk func() intSet) []sizeResult {
	rng := rand.New(rand.NewSource(time.Now().UTC().UnixNano()))
	s := mk()

	var results []sizeResult
	for target := startSize; target < endSize; target += step {
		for s.Size() < target {
			s.Insert(rng.Int())
		}

		var insertTotal, findTotal, eraseTotal time.Duration
		for i := 0; i < trials; i++ {
			key := rng.Int()

			start := time.Now()
			s.Insert(key)
			insertTotal += time.Since(start)

			start = time.Now()
			s.Find(key)
			findTotal += time.Since(start)

			start = time.Now()
			s.Erase(key)
			eraseTotal += time.Since(start)
		}

		results = append(results, sizeResult{
			treeSize:   target,
			insertTime: insertTotal.Seconds() / trials,
			findTime:   findTotal.Seconds() / trials,
			eraseTime:  eraseTotal.Seconds() / trials,
		})
	}
	return results
}
