package main

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/halsimplicity/halsimplicity/app/actions"
	"github.com/pkg/errors"
)

type noParams struct{}

var commandTypes = []struct {
	method string
	typeof reflect.Type
}{
	{"simplicity_info", reflect.TypeOf(actions.InfoRequest{})},
	{"simplicity_sighash", reflect.TypeOf(actions.SighashRequest{})},
	{"keypair_generate", reflect.TypeOf(noParams{})},
	{"tx_decode", reflect.TypeOf(actions.TxDecodeRequest{})},
	{"address_inspect", reflect.TypeOf(actions.AddressInspectRequest{})},
	{"version", reflect.TypeOf(noParams{})},
}

type commandDescription struct {
	name       string
	parameters []*parameterDescription
}

type parameterDescription struct {
	name   string
	typeof reflect.Type
}

func commandDescriptions() []*commandDescription {
	commandDescriptions := make([]*commandDescription, len(commandTypes))

	for i, commandType := range commandTypes {
		numFields := commandType.typeof.NumField()

		var parameters []*parameterDescription
		for j := 0; j < numFields; j++ {
			field := commandType.typeof.Field(j)
			name := strings.Split(field.Tag.Get("json"), ",")[0]
			if name == "" || name == "-" {
				continue
			}
			parameters = append(parameters, &parameterDescription{
				name:   name,
				typeof: field.Type,
			})
		}
		commandDescriptions[i] = &commandDescription{
			name:       commandType.method,
			parameters: parameters,
		}
	}

	return commandDescriptions
}

func (cd *commandDescription) help() string {
	sb := &strings.Builder{}
	sb.WriteString(cd.name)
	for _, parameter := range cd.parameters {
		if parameter.typeof.Kind() == reflect.Slice {
			_, _ = fmt.Fprintf(sb, " [%s...]", parameter.name)
			continue
		}
		_, _ = fmt.Fprintf(sb, " [%s]", parameter.name)
	}
	return sb.String()
}

func findCommand(name string) (*commandDescription, error) {
	for _, description := range commandDescriptions() {
		if description.name == name {
			return description, nil
		}
	}
	return nil, errors.Errorf("unknown command '%s'", name)
}

// parseParameters assigns the positional command line values to the
// parameters of the command in order. A trailing slice parameter takes
// every remaining value.
func (cd *commandDescription) parseParameters(values []string) (map[string]interface{}, error) {
	params := make(map[string]interface{}, len(values))
	for i, value := range values {
		if i >= len(cd.parameters) {
			return nil, errors.Errorf("%s takes at most %d parameters but got %d",
				cd.name, len(cd.parameters), len(values))
		}
		parameter := cd.parameters[i]

		typeof := parameter.typeof
		if typeof.Kind() == reflect.Ptr {
			typeof = typeof.Elem()
		}
		switch typeof.Kind() {
		case reflect.String:
			params[parameter.name] = value
		case reflect.Uint32:
			parsed, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return nil, errors.Wrapf(err, "parameter %s must be an unsigned 32-bit integer", parameter.name)
			}
			params[parameter.name] = uint32(parsed)
		case reflect.Slice:
			params[parameter.name] = values[i:]
			return params, nil
		default:
			return nil, errors.Errorf("parameter %s has unsupported type %s", parameter.name, parameter.typeof)
		}
	}
	return params, nil
}

func printCommands() {
	fmt.Println("Commands:")
	for _, command := range commandDescriptions() {
		fmt.Printf("\t%s\n", command.help())
	}
}
