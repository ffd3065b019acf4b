package main

import "github.com/dnitsch/aws-creds-chain/cmd"

func main() {
	cmd.Execute()
}
