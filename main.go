package main

import "taste-trail-backend/cmd"

func main() {
	cmd.Run()
}
