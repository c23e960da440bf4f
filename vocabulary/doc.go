// Package vocabulary turns identifiers and free text into normalized
// phrases: lowercase, segmented into real words and lemmatized.
//
// A Vocabulary is a session object owned by one document-processing run. It
// starts from the word costs of an nlp.Model and grows as it meets words the
// model does not know, so an identifier seen once segments the same way for
// the rest of the run.
//
// # Segmentation
//
// Text is first split on anything that is not a letter and on case
// boundaries ("petId", "HTTPServer"). Each lowercase run is then split into
// the cheapest sequence of known words, where a word's cost comes from its
// frequency rank. Runs that cannot be covered by known words are kept whole
// and recorded as novel words with cost 0.
//
// # Learning
//
// Learn segments a name and drops the cost of every resulting word to 0.
// Indexing learns every Definition and property name before normalizing any
// of them, so later names can be split using words introduced by earlier
// ones.
//
// A Vocabulary is not safe for concurrent use.
package vocabulary
