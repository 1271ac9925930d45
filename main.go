package main

import "github.com/jsphweid/chartdex/cmd"

func main() {
	cmd.Execute()
}
