// Package html provides a Normaliser for menus published as web pages.
// It strips tags, scripts and styles, keeps table cells on one line and
// decodes entities so prices and dish names reach the LLM as plain text.
package html
