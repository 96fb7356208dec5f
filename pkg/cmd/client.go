package cmd

import (
	"net/http"

	"github.com/spf13/viper"

	"github.com/c9s/glassnode/pkg/datasource/glassnode"
)

// newClient builds the api client from the bound flags and env vars.
// Tests replace it to inject a mock transport.
var newClient = func() (*glassnode.Client, error) {
	httpClient := &http.Client{
		Timeout: viper.GetDuration("timeout"),
	}

	return glassnode.New(glassnode.Config{
		APIKey: viper.GetString("api-key"),
		APIURL: viper.GetString("api-url"),
	}, glassnode.WithHTTPClient(httpClient))
}
