//go:build tinygo

package main

func main() {
	setup()
	blink(-1, 1000)
}
