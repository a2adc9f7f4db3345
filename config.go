package main

type config struct {
	Web     webConfig      `yaml:"web"`
	Sources []sourceConfig `yaml:"sources"`
}

type webConfig struct {
	Address           string `yaml:"address"`
	DisableRequestLog bool   `yaml:"disable_request_log"`
}

type sourceConfig struct {
	Id                  string `yaml:"id"`
	Address             string `yaml:"address"`
	ReconnectDelay      int    `yaml:"reconnect_delay"`
	ReadTimeout         int    `yaml:"read_timeout"`
	ConnectTimeout      int    `yaml:"connect_timeout"`
	DisableReceptionLog bool   `yaml:"disable_reception_log"`
	Debug               bool   `yaml:"debug"`
}
