package param

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"

	"github.com/asaskevich/govalidator"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/schema"
	"github.com/shopspring/decimal"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.SetAliasTag("json")
	decoder.IgnoreUnknownKeys(true)
	decoder.RegisterConverter(decimal.Decimal{}, func(v string) reflect.Value {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(d)
	})
	decoder.RegisterConverter(common.Address{}, func(v string) reflect.Value {
		if !common.IsHexAddress(v) {
			return reflect.Value{}
		}
		return reflect.ValueOf(common.HexToAddress(v))
	})
}

// Binding decodes query parameters for GET and the json body otherwise,
// then validates v with its valid tags
func Binding(r *http.Request, v interface{}) error {
	if r.Method == http.MethodGet {
		if err := decoder.Decode(v, r.URL.Query()); err != nil {
			return fmt.Errorf("decode query: %w", err)
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			return fmt.Errorf("decode body: %w", err)
		}
	}

	if _, err := govalidator.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}
