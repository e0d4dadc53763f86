package domain

// RawMenu is a menu document as read from disk or a request body,
// before it is reduced to plain text for extraction.
type RawMenu struct {
	// URI is the original location (file path or upload name).
	URI string

	// MIMEType is the content type (e.g., "text/html").
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}

// MenuText is a RawMenu reduced to plain text.
type MenuText struct {
	// Title is the document title, or the file name when there is none.
	Title string

	// Text is the readable content handed to the LLM.
	Text string

	// Format names the normaliser that produced Text ("html", "markdown", "plaintext").
	Format string
}
