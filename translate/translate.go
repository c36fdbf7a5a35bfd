// Package translate renders user-visible messages for the LS-8 tools in the
// language of the host locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	tag     language.Tag
	printer *message.Printer
)

func init() {
	tag = detect()
	printer = message.NewPrinter(tag)
}

// detect matches the host locales against the message catalog.
func detect() language.Tag {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("ls8: locale: %v", err)
	}

	if len(locales) == 0 {
		return language.AmericanEnglish
	}

	return message.MatchLanguage(locales...)
}

// Language returns the language messages are rendered in.
func Language() language.Tag {
	return tag
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
