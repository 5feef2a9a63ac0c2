package main

import "github.com/wordmask/wordmask/cmd/wordmask"

func main() { wordmask.Execute() }
