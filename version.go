package arazzo

import "github.com/Masterminds/semver/v3"

// Version is the latest Arazzo release this module targets. Useful as
// the Arazzo field when constructing documents in code.
const Version = "1.0.1"

// supportedVersions names the Arazzo release lines accepted by the
// document version gate.
var supportedVersions = []string{"1.0"}

// checkVersion gates the document's declared Arazzo version: it must
// parse as a semantic version and sit on a supported line. The gate
// runs before anything else in the document is inspected.
func checkVersion(found string) error {
	v, err := semver.NewVersion(found)
	if err != nil {
		return errVersion(found, supportedVersions)
	}
	if v.Major() != 1 || v.Minor() != 0 {
		return errVersion(found, supportedVersions)
	}
	return nil
}
