// Package pkg provides the core libraries for maintaining consistency
// across the translated pages of a multilingual wiki.
//
// # Overview
//
// Pages in every language share one wiki with their translations,
// distinguished by a language suffix in the page title, for example
// "Installation guide (Česky)". The packages here parse those titles,
// group pages into translation families, rewrite page headers, and keep
// the per-language category trees aligned.
//
// # Architecture
//
// The typical data flow:
//
//	MediaWiki API (page and category listings)
//	         ↓
//	    [lang] package (title ↔ language parsing)
//	         ↓
//	    [family] package (group translations, compute links)
//	         ↓
//	    [header] package (rewrite page header blocks)
//	         ↓
//	    edits back through the API
//
// # Quick Start
//
// Group pages into families and compute the interlanguage links of one
// page:
//
//	import "github.com/jkral/interwiki/pkg/family"
//
//	resolver, _ := family.NewResolver(pages)
//	links, _ := resolver.GetLangLinks("Installation guide (Česky)")
//
// # Main Packages
//
// ## Domain Logic
//
// [lang] - The language registry and title model. Detects the language
// of a title from its suffix and formats base titles for a target
// language, including subpage handling.
//
// [wikitext] - A small line-oriented wikitext tree. Parses page text
// into nodes for magic words, category links, interlanguage links and
// plain text, and serializes back.
//
// [header] - Extraction and normalization of the page header block:
// magic words first, then categories, then interlanguage links, each
// group deduplicated and sorted.
//
// [family] - Translation families. Groups pages by base title, pulls
// links in two phases with the default language's page as the
// authority, and computes the final langlink set per page.
//
// [catgraph] - The category graph. Builds adjacency from listings,
// walks subtrees cycle-safely, compares two language subtrees, and
// creates missing localized categories.
//
// [toc] - Table-of-contents rendering of category subtrees in plain
// text or wikitext, with localized names and "also in" annotations.
//
// ## Infrastructure
//
// [mediawiki] - The API client: paginated listings, token handling,
// edits with conflict detection, and login.
//
// [httputil] - HTTP response caching and retry with backoff.
//
// [cache] - Server-side artifact caching with file, redis and null
// backends.
//
// [config] - TOML configuration loading.
//
// [errors] - Error codes and wrapping used across all packages.
//
// [observability] - Hook points for recording sync, cache and HTTP
// events.
package pkg
