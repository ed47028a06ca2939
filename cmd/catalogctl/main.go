package main

import "storefront/internal/catalogctl"

func main() {
	catalogctl.Execute()
}
