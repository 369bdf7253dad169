package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type errorOutput struct {
	Error string `json:"error"`
}

// printResult writes result to w as indented JSON, or as YAML when asYAML
// is set.
func printResult(w io.Writer, result interface{}, asYAML bool) error {
	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errors.Wrap(err, "error encoding result")
	}
	if !asYAML {
		_, err = fmt.Fprintln(w, string(jsonBytes))
		return err
	}

	yamlBytes, err := jsonToYAML(jsonBytes)
	if err != nil {
		return err
	}
	_, err = w.Write(yamlBytes)
	return err
}

// jsonToYAML converts a JSON document to block style YAML keeping the JSON
// field names and their order.
func jsonToYAML(jsonBytes []byte) ([]byte, error) {
	var node yaml.Node
	err := yaml.Unmarshal(jsonBytes, &node)
	if err != nil {
		return nil, errors.Wrap(err, "error converting result to YAML")
	}
	clearStyle(&node)
	yamlBytes, err := yaml.Marshal(&node)
	if err != nil {
		return nil, errors.Wrap(err, "error encoding YAML")
	}
	return yamlBytes, nil
}

func clearStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		clearStyle(child)
	}
}

func printErrorAndExit(err error, asYAML bool) {
	printErr := printResult(os.Stdout, &errorOutput{Error: err.Error()}, asYAML)
	if printErr != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
	}
	os.Exit(1)
}
