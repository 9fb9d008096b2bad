package assets

import "github.com/smasonuk/sieroom/pkg/logger"

var log = logger.For("assets")
