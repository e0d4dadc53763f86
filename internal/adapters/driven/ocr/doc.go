// Package ocr groups the text recognition adapters. Each subpackage
// implements driven.OCRService for one provider.
package ocr
