package main

import "github.com/nyanyapushkina/log-analysis-bot/internal/cmd"

func main() {
	cmd.Execute()
}
