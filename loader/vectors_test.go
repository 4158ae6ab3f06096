package loader_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/imulsim/loader"
	"github.com/sarchlab/imulsim/timing/stream"
)

var _ = Describe("Vectors", func() {
	Describe("Parse", func() {
		It("should read operands and products", func() {
			in := `# small cases
2 3 6
0x0fffffff 0x64 0x3fffff9c   # truncated
-1 1 -1
`
			txns, err := loader.Parse(strings.NewReader(in), 32)
			Expect(err).NotTo(HaveOccurred())
			Expect(txns).To(HaveLen(3))

			Expect(txns[0].Req).To(Equal(stream.NewReqMsg(32, 2, 3)))
			Expect(txns[0].Resp.Value).To(Equal(uint64(6)))
			Expect(txns[1].Resp.Value).To(Equal(uint64(0x3fffff9c)))
			Expect(txns[2].Req.A.Value).To(Equal(uint64(0xffffffff)))
			Expect(txns[2].Resp.Value).To(Equal(uint64(0xffffffff)))
		})

		It("should compute missing products", func() {
			txns, err := loader.Parse(strings.NewReader("-8 -8\n0b101 0o7\n"), 32)
			Expect(err).NotTo(HaveOccurred())

			Expect(txns[0].Resp.Int()).To(Equal(int64(64)))
			Expect(txns[1].Resp.Value).To(Equal(uint64(35)))
		})

		It("should skip blank and comment lines", func() {
			txns, err := loader.Parse(strings.NewReader("\n   \n# only a comment\n"), 32)
			Expect(err).NotTo(HaveOccurred())
			Expect(txns).To(BeEmpty())
		})

		It("should report the line of a malformed entry", func() {
			_, err := loader.Parse(strings.NewReader("2 3\n1 2 3 4\n"), 32)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("line 2"))
		})

		It("should reject invalid numbers", func() {
			_, err := loader.Parse(strings.NewReader("2 x\n"), 32)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("line 1"))
			Expect(err.Error()).To(ContainSubstring(`"x"`))
		})

		It("should reject values that do not fit", func() {
			_, err := loader.Parse(strings.NewReader("0x100 1\n"), 8)
			Expect(err).To(MatchError(ContainSubstring("does not fit in 8 bits")))

			_, err = loader.Parse(strings.NewReader("-129 1\n"), 8)
			Expect(err).To(HaveOccurred())

			_, err = loader.Parse(strings.NewReader("-128 1\n"), 8)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should reject unsupported widths", func() {
			_, err := loader.Parse(strings.NewReader(""), 0)
			Expect(err).To(HaveOccurred())
			_, err = loader.Parse(strings.NewReader(""), 33)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Write", func() {
		It("should write what Parse reads", func() {
			txns := []stream.Transaction{
				{Req: stream.NewReqMsg(32, 2, 3), Resp: stream.NewBits(32, 6)},
				{Req: stream.NewReqMsgInt(32, -1, 1), Resp: stream.FromInt(32, -1)},
			}

			var buf bytes.Buffer
			Expect(loader.Write(&buf, txns)).To(Succeed())
			Expect(buf.String()).To(HavePrefix("0x00000002 0x00000003 0x00000006\n"))

			back, err := loader.Parse(&buf, 32)
			Expect(err).NotTo(HaveOccurred())
			Expect(back).To(Equal(txns))
		})
	})

	Describe("Load", func() {
		var tempDir string

		BeforeEach(func() {
			var err error
			tempDir, err = os.MkdirTemp("", "loader-test")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			_ = os.RemoveAll(tempDir)
		})

		It("should load a vector file", func() {
			path := filepath.Join(tempDir, "vectors.txt")
			Expect(os.WriteFile(path, []byte("4 5 20\n"), 0644)).To(Succeed())

			txns, err := loader.Load(path, 32)
			Expect(err).NotTo(HaveOccurred())
			Expect(txns).To(HaveLen(1))
		})

		It("should name the file in parse errors", func() {
			path := filepath.Join(tempDir, "bad.txt")
			Expect(os.WriteFile(path, []byte("4\n"), 0644)).To(Succeed())

			_, err := loader.Load(path, 32)
			Expect(err).To(MatchError(ContainSubstring("bad.txt")))
		})

		It("should return error for non-existent file", func() {
			_, err := loader.Load("/nonexistent/vectors.txt", 32)
			Expect(err).To(HaveOccurred())
		})
	})
})
