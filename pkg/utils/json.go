package utils

import (
	"bytes"
	stdjson "encoding/json"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJSON serializa o valor indentado com tabulação. Um []byte é tratado
// como JSON já serializado e só é reindentado.
func PrettyJSON(in any) (string, error) {
	buffer, ok := in.([]byte)
	if !ok {
		var err error
		if buffer, err = json.Marshal(in); err != nil {
			return "", err
		}
	}

	var out bytes.Buffer
	if err := stdjson.Indent(&out, buffer, "", "\t"); err != nil {
		return "", err
	}
	return out.String(), nil
}
