package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"bits-to-http/bits"

	"gopkg.in/yaml.v3"
)

func main() {
	configFileFlag := flag.String("config", "", "The config file")
	decodeFlag := flag.String("decode", "", "A hex transmission to decode. Prints the version checksum and the evaluated value and then exits.")
	dumpFlag := flag.String("dump", "", "A file with one framed transmission per line to decode for debugging. Prints the decoded packet trees to the terminal and then exits.")

	flag.Parse()

	if len(*configFileFlag) == 0 && len(*decodeFlag) == 0 && len(*dumpFlag) == 0 {
		flag.Usage()
		return
	}

	if len(*decodeFlag) != 0 {
		decodeTransmission(*decodeFlag)
		return
	}

	if len(*dumpFlag) != 0 {
		dumpFile(*dumpFlag)
		return
	}

	cfg, err := loadConfig(*configFileFlag)

	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	l := newLogger()

	reports := newReportManager(cfg)
	exporter := newWebExporter(reports, l.newSubLogger("web"))
	receivers := newReceiverManager(cfg.Sources, reports, l.newSubLogger("receiverManager"))

	errorChannel := make(chan error)

	go func() {
		err := exporter.serve(&cfg.Web)

		if err == http.ErrServerClosed {
			return
		}

		errorChannel <- err
	}()

	go func() {
		err := receivers.run()
		errorChannel <- err
	}()

	for {
		err := <-errorChannel

		log.Fatalf("subsystem returned error: %v", err)
	}
}

func loadConfig(path string) (*config, error) {
	var configContent []byte
	{
		f, err := os.OpenFile(path, os.O_RDONLY, 0)

		if err != nil {
			return nil, err
		}

		defer f.Close()

		configContent, err = io.ReadAll(f)

		if err != nil {
			return nil, err
		}
	}

	var c config
	err := yaml.Unmarshal(configContent, &c)

	if err != nil {
		return nil, err
	}

	return &c, nil
}

func decodeTransmission(transmission string) {
	packet, err := bits.Decode(transmission)

	if err != nil {
		switch err.(type) {
		case *bits.OutOfBounds, *bits.MalformedGroup, *bits.InvalidTransmission:
			fmt.Printf("malformed transmission: %v\n", err)
		default:
			fmt.Printf("failed to decode transmission: %v\n", err)
		}

		os.Exit(1)
	}

	fmt.Printf("version checksum: %d\n", bits.SumVersions(packet))
	fmt.Printf("evaluated value: %d\n", bits.Eval(packet))
}

func dumpFile(filePath string) {
	f, err := os.OpenFile(filePath, os.O_RDONLY, 0)

	if err != nil {
		fmt.Printf("failed to load file to dump: %v\n", err)
		os.Exit(1)
	}

	defer f.Close()

	reader := bits.NewReader(f)

	dumpedAny := false

	for {
		var t *bits.Transmission
		t, err = reader.ReadTransmission()

		if err != nil {
			break
		}

		dumpedAny = true
		fmt.Println("found transmission:")
		fmt.Printf("%s\n\n", t.StringPretty())
	}

	if err == nil || err == io.EOF {
		if !dumpedAny {
			fmt.Printf("no valid transmissions found in file\n")
			os.Exit(2)
		}

		return
	}

	fmt.Printf("failed to read from file: %v\n", err)
	os.Exit(1)
}
