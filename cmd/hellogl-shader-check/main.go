package main

import (
	"fmt"
	"log"
	"os"

	"github.com/opengl-setup-test/hellogl/lib/rendering/shaders"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("Usage: %s <shader file>", os.Args[0])
	}
	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := shaders.ParseSource(f)
	if err != nil {
		fmt.Printf("Shader invalid: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("VERTEX")
	fmt.Println(src.Vertex)
	fmt.Println("FRAGMENT")
	fmt.Println(src.Fragment)
}
