/* utils.go
 * Contains helper functions used by the main package
 * Authors: Zachary Bower
 */

package main

import (
	"fmt"
	"strings"
)

// Function used to convert a string to a boolean value
// Preconditions: Receives a string to check
// Postconditions: Returns true if the string is "true", false if the string is "false" (case insensitive), or an error for any other input
func convertStrToBool(str string) (bool, error) {
	switch strings.ToLower(str) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid input: %s", str)
	}
}
