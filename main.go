package main

import "github.com/meysamhadeli/repoctx/cmd"

func main() {
	cmd.Execute()
}
