package integrations_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	bberrors "github.com/matzehuels/biblio/pkg/errors"
	"github.com/matzehuels/biblio/pkg/integrations"
)

func ExampleClient_Get() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := integrations.NewClient(time.Second, nil)
	_, err := client.Get(context.Background(), srv.URL)

	fmt.Println("code:", bberrors.GetCode(err))
	fmt.Println("network:", errors.Is(err, integrations.ErrNetwork))
	// Output:
	// code: NETWORK_ERROR
	// network: true
}

func Example_errors() {
	// Standard errors for upstream operations
	fmt.Println("ErrNotFound:", integrations.ErrNotFound)
	fmt.Println("ErrNetwork:", integrations.ErrNetwork)
	// Output:
	// ErrNotFound: resource not found
	// ErrNetwork: network error
}
