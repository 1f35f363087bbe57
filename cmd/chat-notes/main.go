package main

import "github.com/nguyentantai21042004/chat-notes/internal/cmd"

func main() {
	cmd.Execute()
}
