package main

import (
	"context"
	"flag"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/cli"
)

func main() {

	serverURL := flag.String("a", "http://localhost:3000", "AuthKeeper server base URL")
	flag.Parse()

	app := cli.NewApp(client.New(*serverURL), os.Stdin, os.Stdout)
	app.Root(context.Background())
}
