// Package translate formats the user visible messages of vcpu in the
// language of the host environment.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// DEFAULT_LANGUAGE is used when the environment reports no locale.
const DEFAULT_LANGUAGE = "en-US"

var printer *message.Printer

func init() {
	SetLanguage()
}

// SetLanguage selects the message printer from a list of BCP 47 tags.
// With no tags, the locales of the host environment are used.
func SetLanguage(tags ...string) {
	if len(tags) == 0 {
		locales, err := locale.GetLocales()
		if err != nil {
			log.Printf("vcpu: locale: %v", err)
		}
		tags = locales
	}

	if len(tags) == 0 {
		tags = []string{DEFAULT_LANGUAGE}
	}

	printer = message.NewPrinter(message.MatchLanguage(tags...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
