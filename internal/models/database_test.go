package models_test

import (
	"github.com/rentledger/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestConnectInvalidPath() {
	err := models.Connect("/this/path/does/not/exist/rentledger.db")
	assert.NotNil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestClosedDBErrGeneral() {
	suite.CloseDB()

	property := models.Property{}
	err := models.DB.Create(&property).Error
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}
