// Package catalogs provides data embedded at build time.
package catalogs

import _ "embed"

// VocabularyYAML is the default tag vocabulary for section metadata.
//
//go:embed vocabulary.yaml
var VocabularyYAML []byte
