// Package html turns Blogger post bodies into plain text for listings.
// It drops scripts, styles and markup, decodes entities and keeps block
// boundaries as line breaks.
package html
