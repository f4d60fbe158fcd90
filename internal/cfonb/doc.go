// Package cfonb decodes CFONB exchange files in the 120-column statement
// layout and the 240-column transfer layout.
//
// Decoding runs in three steps: SplitLines cuts the content into physical
// lines, a Dispatcher turns each line into a model.Element using the first
// recognizer matching its record code, and a reader assembles the elements
// into statements or transfers.
package cfonb
