package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vgmirror-cli/vgmirror/filesystem"
	"github.com/vgmirror-cli/vgmirror/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("Should default to the standard format priority", func() {
			_ = Setup()
			So(viper.GetStringSlice(key.DownloadsFormatPriority), ShouldResemble, []string{"original", "wav", "flac", "mp3"})
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("downloads.format_priority"), ShouldEqual, "downloads_format_priority")
		})
	})
}
