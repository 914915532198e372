package catalog

// RawModels is the built-in catalog of raw model keys offered by the picker
// and `model list`. Real deployments replace the course name and date prefix
// per project.
var RawModels = []string{
	"골프장명(25.00.00)_G2_롱데크(장축)_2인승_리튬",
	"골프장명(25.00.00)_G2_롱데크_2인승_리튬",
	"골프장명(25.00.00)_G2_롱데크_2인승_액상",
	"골프장명(25.00.00)_G2_숏데크_5인승_리튬",
	"골프장명(25.00.00)_G2_수동_5인승 역방향_리튬",
	"골프장명(25.00.00)_G2_수동_5인승_리튬",
	"골프장명(25.00.00)_G2_수동_8인승_리튬",
	"골프장명(25.00.00)_G2_수동_11인승_리튬",
	"골프장명(25.00.00)_G2_전자유도_5인승_리튬",
	"골프장명(25.00.00)_G2_전자유도_5인승_배터리 미포함",
	"골프장명(25.00.00)_G2_전자유도_5인승_액상",
	"골프장명(25.00.00)_G2_전자유도_8인승_리튬",
	"골프장명(25.00.00)_G2_전자유도_VIP 4인승_액상",
	"골프장명(25.00.00)_G2_전자유도_VIP 6인승_리튬",
	"골프장명(25.00.00)_G2_전자유도_세미 6인승(T1)_리튬",
	"골프장명(25.00.00)_G2_전자유도_세미 6인승(T2)_리튬",
	"골프장명(25.00.00)_G3_롱데크_2인승_리튬",
	"골프장명(25.00.00)_G3_전자유도_5인승_리튬",
	"골프장명(25.00.00)_G20_2인승_리튬",
	"골프장명(25.00.00)_G20_2인승_액상",
	"골프장명(25.00.00)_ST20_2인승_리튬",
	"골프장명(25.00.00)_ST20_2인승_액상",
}
