package main

import (
	"fmt"
	"log"
	"sync"
)

type logger interface {
	newSubLogger(prefix string) logger

	Printf(fmt string, v ...any)
}

type rootLogger struct {
	lock sync.Mutex
}

func newLogger() logger {
	return &rootLogger{}
}

func (l *rootLogger) newSubLogger(prefix string) logger {
	return &subLogger{
		parent: l,
		prefix: prefix,
	}
}

func (l *rootLogger) Printf(format string, v ...any) {
	l.lock.Lock()
	defer l.lock.Unlock()

	log.Printf(format, v...)
}

type subLogger struct {
	parent logger
	prefix string
}

func (s *subLogger) newSubLogger(prefix string) logger {
	return &subLogger{
		parent: s,
		prefix: prefix,
	}
}

func (s *subLogger) Printf(format string, v ...any) {
	s.parent.Printf("%s: %s", s.prefix, fmt.Sprintf(format, v...))
}
