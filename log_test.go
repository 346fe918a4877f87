package gourmet

import (
	"io"
	"log"
)

func captureLog(w io.Writer) func() {
	orig := log.Writer()
	flags := log.Flags()
	log.SetOutput(w)
	log.SetFlags(0)
	return func() {
		log.SetOutput(orig)
		log.SetFlags(flags)
	}
}
