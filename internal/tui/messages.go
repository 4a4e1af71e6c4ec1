package tui

import (
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/model"
)

type historyLoadedMsg struct {
	articles []model.Article
}

type refreshDoneMsg struct {
	err error
}

type autoRefreshMsg struct{}

type deepDiveMsg struct {
	id   string
	text string
}

type imageDoneMsg struct {
	id string
	ok bool
}

type errMsg struct {
	err error
}
