package explorers

import (
	"bytes"
	"encoding/json"
	"strings"
)

// SourceBundle is the verified source of a contract, flattened to a flat
// mapping from base filename to file content. Path information is dropped;
// when two paths share a base filename the one appearing later in the
// explorer payload wins.
type SourceBundle struct {
	ContractName    string            `json:"contract_name"`
	CompilerVersion string            `json:"compiler_version"`
	Files           map[string]string `json:"files"`
}

type standardJSONInput struct {
	Language string          `json:"language"`
	Sources  json.RawMessage `json:"sources"`
}

type standardJSONEntry struct {
	Content string `json:"content"`
}

type sourceFile struct {
	path    string
	content string
}

// flattenSources turns whatever etherscan stuffed into the SourceCode field
// into a filename -> content map. Multi-file uploads come back as a
// standard-json-input document wrapped in an extra brace pair ({{...}}),
// some older ones as a bare sources object. Anything that doesn't parse is
// treated as a single flat file.
func flattenSources(contractName, sourceCode string) map[string]string {
	trimmed := strings.TrimSpace(sourceCode)

	if strings.HasPrefix(trimmed, "{{") && strings.HasSuffix(trimmed, "}}") {
		inner := trimmed[1 : len(trimmed)-1]
		input := standardJSONInput{}
		if err := json.Unmarshal([]byte(inner), &input); err == nil {
			if files, ok := decodeOrderedSources(input.Sources); ok {
				return flattenFiles(files)
			}
		}
		return singleFile(contractName, sourceCode)
	}

	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		if files, ok := decodeOrderedSources([]byte(trimmed)); ok {
			return flattenFiles(files)
		}
		return singleFile(contractName, sourceCode)
	}

	return singleFile(contractName, sourceCode)
}

// decodeOrderedSources walks a {"path": {"content": "..."}} object with the
// token decoder so files keep the order they appear in the document.
func decodeOrderedSources(raw []byte) ([]sourceFile, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, false
	}
	files := []sourceFile{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		path, ok := keyTok.(string)
		if !ok {
			return nil, false
		}
		entry := standardJSONEntry{}
		if err := dec.Decode(&entry); err != nil {
			return nil, false
		}
		files = append(files, sourceFile{path: path, content: entry.Content})
	}
	if len(files) == 0 {
		return nil, false
	}
	return files, true
}

func flattenFiles(files []sourceFile) map[string]string {
	flat := map[string]string{}
	for _, file := range files {
		flat[baseName(file.path)] = file.content
	}
	return flat
}

func baseName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

func singleFile(contractName, content string) map[string]string {
	name := contractName
	if name == "" {
		name = "Contract"
	}
	return map[string]string{name + ".sol": content}
}
