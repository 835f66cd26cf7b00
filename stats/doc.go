// Package stats provides the statistic functions evaluated on 2×2
// contingency tables by the enrichment engine.
//
// Every function takes the four cells of a table
//
//	              in category   not in category
//	test set           a               c
//	background         b               d
//
// and returns a single float64.
//
// # Supported Statistics
//
//   - KindFisher: hypergeometric point probability of the table (Fisher's exact)
//   - KindFoldChange: ratio of the test proportion to the background proportion
//
// # Usage
//
//	p := stats.FisherT(1, 9, 11, 3)
//	fc := stats.FoldChange(11, 3, 1, 9)
//	fn, _ := stats.Provider(stats.KindFisher)
package stats
