package main

import "github.com/Earthpatel/Business-Operations-Bot/cmd"

func main() {
	cmd.Execute()
}
