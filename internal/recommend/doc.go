// Package recommend classifies forum text as recommendation-bearing and extracts the lines worth reporting.
//
// # Matching
//
// A [Matcher] holds an ordered, immutable keyword set ([DefaultKeywords] unless configured) and reports whether any keyword
// is a case-insensitive substring of a text. It keeps no state between calls and is safe for concurrent use.
//
// # Extraction
//
// An [Extractor] turns a post or a comment into report lines:
//
//	From post '<title>':
//	  • <matching self text line>
//
//	From comment on '<title>':
//	  • <comment body>
//
// A post header is emitted whenever the title and self text together match, even when no single line of the self text does,
// so a header can appear with no bullets beneath it.
package recommend
