/*
Package zconv is a client for a remote conversion API that renders its answers into a host page.

The page has a text input, a form, two buttons and two display regions. Four
handlers give it life: page load and the history button fetch the conversion
history, submitting the form converts the input (and refreshes history), and
the clear button empties both regions.

# Concept

The components never look elements up on their own. A ports.Document hands
them explicit handles once, at construction, so the same behavior runs in an
HTML page (pkg/adapters/dom), a terminal (pkg/adapters/terminal) or an
in-memory fake (pkg/adapters/memory).

Regions receive structured fragments (see pkg/view), never markup, so every
interpolated value is escaped by the adapter that draws it.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/zconv"
		"github.com/aretw0/zconv/pkg/adapters/memory"
	)

	func main() {
		doc := memory.NewDocument()

		c, err := zconv.New(doc, zconv.WithAPIURL("http://127.0.0.1:8888"))
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		c.Load(ctx)
		c.Submit(ctx, "dz_a_aazzaaa")
		c.Wait()

		fmt.Println(doc.Result().Text())
		fmt.Println(doc.History().Text())
	}
*/
package zconv
