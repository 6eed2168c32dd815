package main

import "github.com/sumwatshade/valvegear/cmd"

func main() {
	cmd.Execute()
}
