package main

import (
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "accessibility")
