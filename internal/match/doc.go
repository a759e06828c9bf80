// Package match ranks the method records of a class by similarity to a
// target that could not be found, so a failed lookup can point at the
// closest overloads or renamed members.
//
// Key functions:
//   - NormalizeIdent: folds a member name for fuzzy comparison
//   - Levenshtein: computes edit distance between strings
//   - Rank: scores candidate members against one or more target spellings
//   - Suggest: renders the best candidates above a threshold
package match
