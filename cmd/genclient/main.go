// Command genclient regenerates the typed client stubs for the example
// registry. Run it after changing an endpoint definition and commit the
// resulting file.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/aussiebroadwan/rpcbridge/examples/greeter"
	"github.com/aussiebroadwan/rpcbridge/pkg/rpc"
)

func main() {
	out := flag.String("out", "examples/greeter/client/client.gen.go", "output path for the generated client")
	pkg := flag.String("pkg", "client", "package name for the generated file")
	flag.Parse()

	// Generation only reads the endpoint definitions; the resolver is never
	// invoked.
	stub := func(ctx context.Context, userID, secret string) (string, error) {
		return userID, nil
	}

	src := rpc.GenerateClient(*pkg, greeter.Registry(stub))

	if err := os.WriteFile(*out, []byte(src), 0o644); err != nil {
		log.Fatalf("failed to write %s: %v", *out, err)
	}
	log.Printf("wrote %s", *out)
}
