package dataio

import (
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "dataio")
