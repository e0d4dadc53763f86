// Package normalisers reduces menu documents to the plain text the
// extraction prompt expects. Each subpackage handles one family of MIME
// types; Registry picks the highest priority normaliser for a document.
package normalisers
