package zconv_test

import (
	"context"
	"fmt"
	"net/http/httptest"

	"github.com/aretw0/zconv"
	"github.com/aretw0/zconv/pkg/adapters/devapi"
	"github.com/aretw0/zconv/pkg/adapters/memory"
)

func Example() {
	// A local conversion API backed by an in-memory history.
	srv := httptest.NewServer(devapi.NewHandler(memory.NewStore()))
	defer srv.Close()

	doc := memory.NewDocument()
	c, err := zconv.New(doc, zconv.WithAPIURL(srv.URL))
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	c.Load(ctx)
	c.Wait()
	fmt.Println(doc.History().Text())

	c.Submit(ctx, "dz_a_aazzaaa")
	c.Wait()
	fmt.Println(doc.Result().Text())
	fmt.Println(doc.History().Text())

	// Output:
	// No history found.
	// Output: [28, 53, 1]
	// Input: dz_a_aazzaaa Output: [28, 53, 1]
}
