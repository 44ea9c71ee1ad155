package compose

import "github.com/hyp3rd/spoollog/internal/constants"

const MinSizeForTest = constants.MinScratchSize
