// Package negsamp provides batched negative sampling for set-based learning
// models.
//
// Given a large universe of candidate value IDs and, per key, a set of
// forbidden values (the observed positives), negsamp draws num negatives per
// key via rejection sampling: draw from a shuffled cyclic candidate pool,
// bulk-test the draws against the key's exclusion bitmap, redraw only the
// colliding positions until the batch is collision-free. The full candidate
// universe minus exclusions is never materialized.
//
// # Quick Start
//
// Phase-ordered recommendation sampling (train positives are excluded from
// valid-phase negatives, and so on):
//
//	base, _ := negsamp.NewSampler([]string{"train", "valid"}, datasets)
//	train, _ := base.Phase("train")
//	negs, _ := train.Sample(userIDs, 4)
//
// Knowledge-graph tail sampling:
//
//	kg, _ := negsamp.NewKGSampler(triples, negsamp.WithDistribution(pool.Popularity))
//	tails, _ := kg.Sample(headIDs, 1)
//
// Sequential sampling, one negative per position:
//
//	seq, _ := negsamp.NewSeqSampler(ds)
//	negs, _ := seq.SampleNeg(positives)
//
// Results are flat and column-major over the (key, replicate) grid: element
// i + j*len(keys) is the j-th sample for keys[i]. Sampling is with
// replacement; a value may repeat across output positions but never collides
// with its key's exclusion set.
//
// Samplers are not safe for concurrent use (the pool cursor is shared,
// unsynchronized state). Phase views are the cheap way to fan out: they share
// the candidate pool and narrow only the exclusion index.
package negsamp
