// Package pipeline turns markdown source into a renderable block tree.
//
// The tree is a closed set of tagged variants (Heading, Paragraph,
// CodeBlock, List, Quote, Rule) so renderers can switch on concrete types
// instead of walking a generic DOM. Inline content is flattened into spans
// carrying resolved style bits, which keeps renderers free of nesting
// concerns.
package pipeline
