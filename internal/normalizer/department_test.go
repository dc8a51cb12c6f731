package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func departmentTable() Table {
	return Table{
		Headers: []string{"No", "質問項目", "営業部", "開発部", "管理部", "全体"},
		Rows: [][]string{
			{"1", "仕事にやりがいを感じている", "3.2", "3.8", "3.5", "3.5"},
			{"", "", "", "", "", ""}, // spacer
			{"2", "上司と率直に話し合える", "2.9", "3.4", "3.1", "3.1"},
		},
	}
}

func TestNormalizeDepartmentMatrix(t *testing.T) {
	n := testNormalizer()

	res, err := n.NormalizeDepartmentMatrix(departmentTable())
	require.NoError(t, err)
	require.Equal(t, ShapeDepartmentMatrix, res.Shape)

	m := res.Matrix
	assert.Equal(t, "全体", m.OverallDepartment)
	assert.ElementsMatch(t, []string{"営業部", "開発部", "管理部", "全体"}, m.Departments)

	require.Len(t, m.Questions, 2)
	q := m.Questions[0]
	assert.Equal(t, "1", q.Number)
	assert.Equal(t, "Q1. 仕事にやりがいを感じている", q.Key)
	assert.Equal(t, map[string]float64{
		"営業部": 3.2, "開発部": 3.8, "管理部": 3.5, "全体": 3.5,
	}, q.Scores)
}

func TestNormalizeDepartmentMatrix_EnglishTotalColumn(t *testing.T) {
	n := testNormalizer()
	table := Table{
		Headers: []string{"Question", "A", "B", "Total"},
		Rows: [][]string{
			{"I find my work rewarding", "3.0", "4.0", "3.5"},
		},
	}

	res, err := n.NormalizeDepartmentMatrix(table)
	require.NoError(t, err)
	assert.Equal(t, "Total", res.Matrix.OverallDepartment)
	assert.Equal(t, 3.5, res.Matrix.Questions[0].Scores["Total"])
}

func TestNormalizeDepartmentMatrix_ScoresRounded(t *testing.T) {
	n := testNormalizer()
	table := Table{
		Headers: []string{"質問項目", "営業部"},
		Rows:    [][]string{{"仕事にやりがいを感じている", "3.333333"}},
	}

	res, err := n.NormalizeDepartmentMatrix(table)
	require.NoError(t, err)
	assert.Equal(t, 3.33, res.Matrix.Questions[0].Scores["営業部"])
}

func TestNormalizeDepartmentMatrix_DeniedColumns(t *testing.T) {
	n := testNormalizer()
	table := Table{
		Headers: []string{"No", "質問項目", "営業部", "回答数合計", "加重平均", "そう思う"},
		Rows: [][]string{
			{"1", "仕事にやりがいを感じている", "3.2", "4.0", "3.2", "4.1"},
		},
	}

	res, err := n.NormalizeDepartmentMatrix(table)
	require.NoError(t, err)

	// Count, average and Likert-label columns never become departments
	assert.Equal(t, []string{"営業部"}, res.Matrix.Departments)
}

func TestNormalizeDepartmentMatrix_ValueFilters(t *testing.T) {
	n := testNormalizer()
	table := Table{
		Headers: []string{"質問項目", "営業部", "コード", "備考欄ですよ"},
		Rows: [][]string{
			{"仕事にやりがいを感じている", "3.2", "102", "よいと思います"},
			{"上司と率直に話し合える", "2.9", "205", "特になしです"},
		},
	}

	res, err := n.NormalizeDepartmentMatrix(table)
	require.NoError(t, err)

	// コード is numeric but outside the plausible score band; 備考欄 is text
	assert.Equal(t, []string{"営業部"}, res.Matrix.Departments)
}

func TestNormalizeDepartmentMatrix_Errors(t *testing.T) {
	n := testNormalizer()

	tests := []struct {
		name  string
		table Table
		want  error
	}{
		{
			name: "no label column",
			table: Table{
				Headers: []string{"A", "B"},
				Rows:    [][]string{{"3.1", "3.2"}},
			},
			want: ErrNoLabelColumn,
		},
		{
			name: "no department columns",
			table: Table{
				Headers: []string{"質問項目"},
				Rows:    [][]string{{"仕事にやりがいを感じている"}},
			},
			want: ErrNoDepartmentColumns,
		},
		{
			name: "only spacer rows",
			table: Table{
				Headers: []string{"質問項目", "営業部"},
				Rows:    [][]string{{"－", "3.0"}},
			},
			want: ErrNoQuestionRows,
		},
		{
			name:  "empty table",
			table: Table{},
			want:  ErrNoQuestionRows,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.NormalizeDepartmentMatrix(tt.table)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
