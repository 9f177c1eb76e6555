// Command rdfctl inspects, de-identifies and decodes GE RDF listmode files.
package main

func main() {
	execute()
}
