package version

import (
	"fmt"
	"strings"
)

// validCharacters is a list of characters valid in the appBuild string
const validCharacters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-"

const (
	appMajor uint = 0
	appMinor uint = 2
	appPatch uint = 0
)

// appBuild is defined as a variable so it can be overridden during the build
// process with '-ldflags "-X github.com/halsimplicity/halsimplicity/version.appBuild=foo"' if needed.
// It MUST only contain characters from validCharacters.
var appBuild string

var version = ""

// Version returns the version of the halsimplicity tools, with the build
// metadata appended when it is valid.
func Version() string {
	if version == "" {
		version = formatVersion(appMajor, appMinor, appPatch, appBuild)
	}
	return version
}

func formatVersion(major, minor, patch uint, build string) string {
	formatted := fmt.Sprintf("%d.%d.%d", major, minor, patch)
	if checkAppBuild(build) != "" {
		formatted = fmt.Sprintf("%s-%s", formatted, build)
	}
	return formatted
}

// checkAppBuild returns the passed string unless it contains any characters not in validCharacters
func checkAppBuild(str string) string {
	for _, r := range str {
		if !strings.ContainsRune(validCharacters, r) {
			return ""
		}
	}
	return str
}
