// Command kgvalidate checks kindergarten records against the domain schemas.
//
// Usage:
//
//	# Validate a new enrollment plan read from a file
//	kgvalidate validate --entity enrollment-plan --op create --input plan.json
//
//	# Validate an update against the stored record, in English
//	kgvalidate validate --entity enrollment-plan --op update --input - --prior stored.yaml --locale en
//
//	# Serve uniqueness, capacity and reference rules from the stores
//	kgvalidate validate --entity kindergarten --op create --input kg.json --stores pg,redis,mongo
//
//	# Show the registered entity/operation pairs
//	kgvalidate list
//
// The validate command prints the result as JSON and exits with status 1
// when the input is invalid and 2 on a structural error or when a store
// could not decide.
package main

import "os"

func main() {
	os.Exit(Execute())
}
