package main

import "github.com/opsrequests/request-management/cmd"

func main() {
	cmd.Execute()
}
