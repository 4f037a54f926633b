package dtos

import (
	"time"
)

type JobSubscribeMessageDto struct {
	Job string `json:"job"`
}

type JobStateMessageDto struct {
	Job          string     `json:"job"`
	LastRefresh  *time.Time `json:"lastRefresh"`
	IsRefreshing bool       `json:"isRefreshing"`
}

func (dto JobSubscribeMessageDto) Topic() string {
	return dto.Job
}

func (dto JobSubscribeMessageDto) Validate() (bool, map[string]string) {
	return true, make(map[string]string)
}
